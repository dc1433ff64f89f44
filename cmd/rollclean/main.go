// Rollclean applies time-based retention to rolling log archives.
//
// Each configured target names a file name pattern such as
// "/var/log/web/%d{yyyy/MM/dd}/access.log" and a number of periods to keep.
// On every sweep the archive of the period just outside that window is
// deleted, and the date directories it leaves empty are pruned.
//
// Usage:
//
//	# Run the sweep daemon with hot reload and /metrics
//	rollclean run --config /etc/rollclean/config.yaml
//
//	# Run one sweep now, or as of a given time
//	rollclean clean --at 2024-03-10T00:00:00Z
//
//	# Show what a sweep would delete
//	rollclean plan
//
//	# Write stdin to a rolling file that cleans up after itself
//	myapp | rollclean pipe --target web/access
package main

func main() {
	Execute()
}
