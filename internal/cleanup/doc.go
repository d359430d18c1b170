// Package cleanup implements the one-shot settings removal that runs as
// packrat's preuninstall lifecycle hook.
//
// The operation is a short linear state machine:
//
//	Start → (gated out | proceed)
//	      → {no file: delete dir; file: (confirm → yes: delete file → delete dir | no: stop)}
//	      → End
//
// Two rules shape the implementation:
//   - The gate only opens for an explicit `uninstall` invocation. The hook
//     also fires on `npm update`, where deleting settings would be wrong.
//   - Nothing escapes Run. Filesystem errors degrade to a remediation
//     message so the hosting package-manager lifecycle is never blocked.
package cleanup
