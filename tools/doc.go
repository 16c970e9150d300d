// Package tools defines tool contracts and the course-advising tools.
//
// Includes:
//   - ToolDefinition: name, description, strict flag, JSON input schema, handler.
//   - GenerateSchema[T](): derive JSON Schema from Go structs.
//   - Registry: stable-order registration and lookup.
//   - NameMap: advertised-name to registry-key indirection, validated at startup.
//   - Advising tools: list_courses, get_schedule, add_course, drop_course,
//     check_credit_load.
//
// Handlers report expected domain conditions inside their payloads; a
// handler error return means the tool implementation itself is broken.
package tools
