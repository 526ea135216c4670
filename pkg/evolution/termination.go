package evolution

import "fmt"

type maxGenerations int

// MaxGenerations stops the search after n generations.
func MaxGenerations(n int) Terminator { return maxGenerations(n) }

func (m maxGenerations) Done(state State) bool { return state.Generation >= int(m) }

func (m maxGenerations) Reason() string { return fmt.Sprintf("generation budget of %d reached", int(m)) }

type saturation int

// Saturation stops the search once the best fitness has not improved for n
// consecutive generations. n <= 0 never stops.
func Saturation(n int) Terminator { return saturation(n) }

func (s saturation) Done(state State) bool { return s > 0 && state.Stagnant >= int(s) }

func (s saturation) Reason() string {
	return fmt.Sprintf("best fitness saturated for %d generations", int(s))
}
