package main

import "chefmarket_backend/internal/app"

func main() {
	app.Run()
}
