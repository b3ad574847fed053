// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package main

import (
	"fmt"

	"github.com/sscafiti/fat12nav/cmd/cmd"
)

const (
	version = "0.1.0"
)

func main() {
	printLogo()

	_ = cmd.Execute()
}

func printLogo() {
	fmt.Println(" ____ ____ ____ _  ____   ")
	fmt.Println("|  __|__  |__  |  |__  |  ")
	fmt.Println("| |_    _/ _/ /_ _  _/ /_  ")
	fmt.Println("|  _|  /_/  /__/ |/_/  /_| ")
	fmt.Println("|_|  nav                   ")
	fmt.Println()
	fmt.Println("FAT12 disk image navigator")
	fmt.Println()
	fmt.Printf("Version: %s\n", version)
	fmt.Println(" ")
}
