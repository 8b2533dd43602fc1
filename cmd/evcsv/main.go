// evcsv is a command line companion to the event catalog server. It decodes
// the same CSV and XLSX documents the server serves and applies the same
// filter semantics, which makes it handy for inspecting a source document
// before pointing the server at it.
package main

func main() {
	Execute()
}
