// Package download implements the download manager the map workflow hands
// transfers to. The Manager interface is what the workflow consumes; Service
// is a desktop implementation over net/http with bounded parallelism,
// per-task status and completion notices.
package download
