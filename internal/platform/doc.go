// Package platform contains OS integration glue: well-known directories,
// directory creation and writability probes, and revealing folders in the
// system file manager.
package platform
