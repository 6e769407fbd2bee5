package specs

import (
	"github.com/gravitational/uitest/e2e/framework"
	"github.com/gravitational/uitest/e2e/framework/defaults"
	"github.com/gravitational/uitest/e2e/uimodel/welcome"
	libdefaults "github.com/gravitational/uitest/lib/defaults"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// VerifyWelcome verifies the landing page served at the address returned by startURL
func VerifyWelcome(getPage PageGetter, startURL func() string) {
	framework.RoboDescribe("Landing page", func() {
		var page *welcome.Page

		BeforeEach(func() {
			page = welcome.NewWithURL(getPage(), startURL())
			Expect(page.Open()).To(Succeed())
		})

		AfterEach(func() {
			framework.CaptureOnFailure(page.Page, CurrentGinkgoTestDescription().FullTestText)
		})

		It("should open the landing page", func() {
			Expect(page.WaitForPageLoad(libdefaults.PageLoadTimeout)).To(BeTrue())
			Expect(page.IsAt()).To(BeTrue())
			Expect(page.Title()).NotTo(BeEmpty())
		})

		It("should search for a user", func() {
			Expect(page.Search(defaults.SearchUser)).To(Succeed())
			Expect(page.Attribute(welcome.SearchInput, "value")).To(Equal(defaults.SearchUser))
			Expect(page.RemainingRequests()).To(ContainSubstring("requests"))
		})
	})
}
