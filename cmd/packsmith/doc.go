// Command packsmith is the content-pack editor CLI: it manages the project
// save document, scans assets folders, converts audio, and exports finished
// packs as folder trees or zip archives.
package main
