package e2e

import (
	"github.com/gravitational/uitest/e2e/framework"
	"github.com/gravitational/uitest/e2e/specs"

	. "github.com/onsi/ginkgo"
)

var _ = Describe("browser tests", func() {
	specs.VerifyWelcome(framework.NewPage, startURL)
	specs.VerifyInteractions(framework.NewPage, address)
	specs.VerifyDatabase()
})
