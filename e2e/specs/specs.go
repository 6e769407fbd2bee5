// Package specs defines the browser specs shared by the suites
package specs

import (
	"github.com/gravitational/uitest/lib/ui"
)

// PageGetter returns the page driving the suite session
type PageGetter func() *ui.Page
