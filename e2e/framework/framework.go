package framework

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gravitational/uitest/driver"
	"github.com/gravitational/uitest/driver/selenium"
	"github.com/gravitational/uitest/e2e/framework/defaults"
	"github.com/gravitational/uitest/e2e/uimodel/welcome"
	libdefaults "github.com/gravitational/uitest/lib/defaults"
	"github.com/gravitational/uitest/lib/ui"

	"github.com/gravitational/trace"
	"github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
)

// RoboDescribe is local wrapper function for ginkgo.Describe.
// It adds test namespacing.
func RoboDescribe(text string, body func()) bool {
	return ginkgo.Describe(defaults.SpecPrefix+" "+text, body)
}

// BeforeSuite starts the browser session as configured with TestContext.
// Command line flags following "--" take precedence over the configuration
func BeforeSuite() {
	config, err := selenium.ParseArgsWithBase(driver.CommandLineArgs(), TestContext.Browser)
	Expect(err).NotTo(HaveOccurred())
	_, err = driver.Init(*config)
	Expect(err).NotTo(HaveOccurred())
}

// AfterSuite terminates the browser session.
// Failure to close the session is logged
func AfterSuite() {
	if err := driver.Quit(); err != nil {
		log.WithError(err).Warn("Failed to quit browser session.")
	}
}

// NewPage returns a page driving the suite session
func NewPage() *ui.Page {
	session, err := driver.Get()
	Expect(err).NotTo(HaveOccurred())
	return ui.New(session, ui.WithTimeout(TestContext.ElementTimeout.OrDefault(libdefaults.ElementTimeout)))
}

// WelcomePage returns the landing page at the configured start URL
func WelcomePage(page *ui.Page) *welcome.Page {
	if TestContext.StartURL == "" {
		return welcome.New(page)
	}
	return welcome.NewWithURL(page, TestContext.StartURL)
}

// CaptureOnFailure stores a screenshot of the page in the report directory
// if the current spec has failed
func CaptureOnFailure(page *ui.Page, name string) {
	if !ginkgo.CurrentGinkgoTestDescription().Failed {
		return
	}
	path, err := Capture(page, TestContext.ReportDir, name)
	if err != nil {
		log.WithError(err).Warn("Failed to capture screenshot.")
		return
	}
	fmt.Fprintf(ginkgo.GinkgoWriter, "screenshot saved to %v\n", path)
}

// Capture stores a screenshot of the page in dir under a unique name derived from name.
// Returns the path of the screenshot
func Capture(page *ui.Page, dir, name string) (path string, err error) {
	path = filepath.Join(dir, fmt.Sprintf("%v-%v.png", screenshotName(name), uuid.NewV4()))
	if err := page.TakeScreenshot(path); err != nil {
		return "", trace.Wrap(err)
	}
	return path, nil
}

func screenshotName(name string) string {
	name = strings.Trim(unsafeChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if name == "" {
		return "screenshot"
	}
	return name
}

var unsafeChars = regexp.MustCompile(`[^a-z0-9_.]+`)
