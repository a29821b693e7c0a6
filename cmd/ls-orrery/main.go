// Command ls-orrery is a terminal orrery of the Sun, Moon and the naked-eye
// planets, with a headless WebSocket publisher for other renderers.
package main

func main() {
	Execute()
}
