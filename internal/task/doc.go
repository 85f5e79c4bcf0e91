// Package task defines the task record and its field-level validation rules.
//
// The task file format (tasks.json) is a JSON array of records:
//
//	[
//	  {
//	    "id": 1,
//	    "description": "Write release notes",
//	    "priority": "high",
//	    "status": "pending",
//	    "created_at": "2024-01-01T09:30:00",
//	    "completed_at": "2024-01-02T10:00:00",
//	    "category": "work",
//	    "due_date": "2024-01-15"
//	  }
//	]
//
// Field names and value encodings are the wire format shared with files
// written by older schema revisions and must not change. Records written
// before the category/due_date fields existed are still loadable; missing
// fields are back-filled with their documented defaults (empty string for
// category and due_date, unset completed_at).
//
// # Priority Values
//
//   - "high"
//   - "medium" (default)
//   - "low"
//
// # Status Values
//
//   - "pending": initial state
//   - "completed": terminal state, set by completing a task
//
// # Timestamps
//
// created_at and completed_at are ISO-8601-like local timestamps in the
// fixed-width layout 2006-01-02T15:04:05, so lexicographic comparison
// orders them chronologically. due_date is a bare 2006-01-02 date.
package task
