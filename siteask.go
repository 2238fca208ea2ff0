// Package siteask provides website indexing and question answering.
// It crawls a site within depth and page bounds, extracts text and image
// metadata, chunks and embeds the content into a named collection, and
// answers natural language questions about the site with source citations.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/).
package siteask
