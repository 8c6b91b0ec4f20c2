// Command widthbridge simulates requester accesses going through a width
// adapter to a 64-bit memory bus.
package main

import "github.com/tebeka/atexit"

func main() {
	Execute()
	atexit.Exit(0)
}
