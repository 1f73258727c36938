package operation_test

import (
	"context"
	"fmt"

	"github.com/walteh/reblock/pkg/operation"
)

func ExampleTransform() {
	script := "search:《old_name》 replace:《new_name》"
	code := "old_name = 1\nprint(old_name)"

	result, err := operation.Transform(context.Background(), script, code)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Print(result.ModifiedCode)
	fmt.Printf("exact: %d, block: %d\n", result.Primary, result.Secondary)

	// Output:
	// new_name = 1
	// print(new_name)
	// exact: 2, block: 0
}
