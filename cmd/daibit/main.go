// Package main provides the CLI entrypoint for daibit.
package main

func main() {
	Execute()
}
