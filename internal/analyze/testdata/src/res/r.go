//inflater:create
//inflater:layout
package res

type R struct {
	Layout struct {
		Main  int
		Login int
	}
	ID struct {
		Title int
	}
	Version int
}

func (R) String() string { return "R" }

type Kind int

const Debug = true
