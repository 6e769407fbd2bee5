package constants

import "os"

const (
	// FieldLocator defines a logging field to store the element locator
	FieldLocator = "locator"

	// FieldBrowser defines a logging field to store the browser engine name
	FieldBrowser = "browser"

	// FieldSQL defines a logging field to store the SQL statement
	FieldSQL = "sql"

	// FieldPath defines a logging field to store a file path
	FieldPath = "path"

	// SharedDirMask is a mask for directories created for reports and screenshots
	SharedDirMask os.FileMode = 0755

	// SharedReadWriteMask is a mask for files written for reports and screenshots
	SharedReadWriteMask os.FileMode = 0644
)
