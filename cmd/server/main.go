package main

import "taskhub/internal/app"

// @title           TaskHub API
// @version         1.0
// @description     Landing page and task manager modules for the business platform.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
