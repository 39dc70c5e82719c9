package twice

type Holder struct {
	R struct{}
}
