package main

import "github.com/nikhilkoche/Home-Assignment/server"

func main() {
	server.Main()
}
