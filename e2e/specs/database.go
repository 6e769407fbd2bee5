package specs

import (
	"context"
	"database/sql"

	"github.com/gravitational/uitest/e2e/framework"
	"github.com/gravitational/uitest/lib/db"
	"github.com/gravitational/uitest/lib/wait"

	"github.com/gravitational/trace"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// VerifyDatabase verifies access to the configured database.
// The specs are skipped if no database is configured
func VerifyDatabase() {
	framework.RoboDescribe("Database", func() {
		BeforeEach(func() {
			if !framework.TestContext.HasDatabase() {
				Skip("no database configured")
			}
		})

		It("should query the database", func() {
			ctx := context.Background()
			var conn *sql.DB
			err := wait.Retry(ctx, func() (err error) {
				conn, err = db.Open(ctx, framework.TestContext.Database)
				if trace.IsBadParameter(err) {
					return wait.Abort(err)
				}
				if err != nil {
					return wait.Continue("database is not ready: %v", err)
				}
				return nil
			})
			Expect(err).NotTo(HaveOccurred())
			defer db.CloseQuietly(conn)

			value, ok, err := db.QueryForString(ctx, conn, "SELECT 1")
			Expect(err).NotTo(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(value).To(Equal("1"))
		})
	})
}
