// Package snapshot implements types.Engine over JSON line snapshots.
//
// A snapshot is a JSON document holding the lines of an already-parsed IFC
// model:
//
//	{
//	  "schema": "IFC4",
//	  "lines": [
//	    {"expressID": 1, "type": 103090709, "Name": {"type": 1, "value": "Project"}},
//	    {"expressID": 2, "type": 2391406946, "OwnerHistory": {"type": 5, "value": 1}}
//	  ]
//	}
//
// References use the engine's {"type": 5, "value": <expressID>} shape. The
// engine keeps every opened model in memory and is safe for concurrent use.
package snapshot
