// Package e2e contains the browser test suite.
//
// The suite drives a real browser and runs only if ROBO_E2E is set:
//
//	ROBO_E2E=1 go test ./e2e -- --browser=firefox --headless
package e2e

import (
	"os"
	"testing"

	"github.com/gravitational/uitest/e2e/framework"
	"github.com/gravitational/uitest/lib/constants"
	"github.com/gravitational/uitest/lib/system"

	"github.com/onsi/ginkgo"
	"github.com/onsi/gomega"
	log "github.com/sirupsen/logrus"
)

// EnableEnv names the environment variable enabling the browser suite
const EnableEnv = "ROBO_E2E"

// RunE2ETests runs the browser tests using the ginkgo runner.
// Screenshots of failed specs are saved in TestContext.ReportDir
func RunE2ETests(t *testing.T) {
	if os.Getenv(EnableEnv) == "" {
		t.Skipf("set %v=1 to run the browser suite", EnableEnv)
	}
	if err := framework.InitContext(); err != nil {
		t.Fatalf("failed to read configuration: %v", err)
	}
	if err := os.MkdirAll(framework.TestContext.ReportDir, constants.SharedDirMask); err != nil {
		t.Fatalf("failed to create report directory %q: %v", framework.TestContext.ReportDir, err)
	}
	if framework.TestContext.CleanReportDir {
		if err := system.RemoveContents(framework.TestContext.ReportDir); err != nil {
			t.Fatalf("failed to clean report directory %q: %v", framework.TestContext.ReportDir, err)
		}
	}
	log.Infof("report directory: %q", framework.TestContext.ReportDir)
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "uitest e2e suite")
}
