// Command betterform validates form configurations, checks submissions
// against them and fills them interactively.
package main

func main() {
	Execute()
}
