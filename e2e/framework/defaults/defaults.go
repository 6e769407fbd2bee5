package defaults

const (
	// ReportDir specifies the directory name under the system temporary directory
	// for failure screenshots unless configured
	ReportDir = "uitest-report"
	// SearchUser specifies the GitHub login searched for on the landing page
	SearchUser = "wesbos"
	// SpecPrefix tags the spec names of the suite
	SpecPrefix = "[uitest]"
)
