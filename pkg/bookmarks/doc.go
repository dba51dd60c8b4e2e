// Package bookmarks reads browser data that users hand to tabresumer:
// saved HTML pages (for their <title>) and Netscape-format bookmark
// exports as produced by Firefox and Chrome. Nothing here performs
// network I/O; callers supply the documents.
package bookmarks
