package main

import (
	"boardSync/cmd/app"
)

func main() {
	app.GetApp().LetsGo()
}
