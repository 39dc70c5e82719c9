//inflater:create
package twice

type R struct{}
