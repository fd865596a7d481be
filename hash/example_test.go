package hash_test

import (
	"fmt"

	"github.com/LiuYuuChen/tinyutil/hash"
)

func ExampleString() {
	fmt.Println(hash.String(""))
	fmt.Println(hash.String("hello"))
	// Output:
	// 5381
	// 261238937
}
