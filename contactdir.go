// Package contactdir builds contact directories for Israeli local
// authorities. It crawls municipal websites, finds pages that are likely to
// list staff and departments, and parses their free-form text into
// structured contact records.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, rod/, gemini/).
package contactdir
