package main

import (
	"fmt"
	"time"

	"bisaya/internal"
)

var source string = `
SUGOD
MUGNA NUMERO a=1
MINTRAS (a < 10000000)
PUNDOK{
	a++
}
IPAKITA: a
KATAPUSAN
`

type stdPrinter struct{}

func (s stdPrinter) Println(a ...interface{}) (n int, err error) {
	return fmt.Println(a...)
}

func main() {
	start := time.Now()
	internal.RunSource(source, internal.Options{Out: stdPrinter{}})
	fmt.Println("Time elapsed is:", time.Since(start))
}
