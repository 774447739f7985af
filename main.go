package main

import (
	_ "time/tzdata"

	"shiftbot/internal/app"
)

func main() {
	app.Main()
}
