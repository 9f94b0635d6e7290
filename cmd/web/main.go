package main

import "evervoice_backend/internal/app"

func main() {
	app.Run()
}
