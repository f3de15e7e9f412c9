package main

import (
	"errors"
	"fmt"
	"reflect"
)

// printErrors prints each element of a multi-error (the EBNF package
// returns an unexported error slice) or the single error as-is. Loader
// errors wrap the original, so the chain is searched for the slice.
func printErrors(err error) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		v := reflect.ValueOf(e)
		if v.Kind() == reflect.Slice {
			for i := 0; i < v.Len(); i++ {
				fmt.Println(v.Index(i).Interface())
			}
			return
		}
	}
	fmt.Println(err)
}
