package reduce_test

import (
	"fmt"

	"github.com/skylinelab/watertower/pkg/skyline"
	"github.com/skylinelab/watertower/pkg/skyline/reduce"
)

func ExampleTotalWater() {
	water, err := reduce.TotalWater([]int{5, 2, 2, 5})
	if err != nil {
		panic(err)
	}
	fmt.Println(water)
	// Output: 6
}

func ExampleReduceTrace() {
	s, err := skyline.FromHeights(5, 2, 5)
	if err != nil {
		panic(err)
	}

	water := reduce.ReduceTrace(s, func(step reduce.Step, _ *skyline.Skyline) {
		fmt.Printf("%s water=%d\n", step.Rule, step.Water)
	})
	fmt.Println("total:", water)
	// Output:
	// advance water=0
	// local-min water=3
	// collapse water=0
	// advance water=0
	// collapse water=0
	// total: 3
}
