// Command tweetedit reads and edits post records by path.
package main

func main() {
	Execute()
}
