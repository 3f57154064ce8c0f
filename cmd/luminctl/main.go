package main

import "github.com/GriffinCanCode/LuminOS/backend/cmd/luminctl/cmd"

func main() {
	cmd.Execute()
}
