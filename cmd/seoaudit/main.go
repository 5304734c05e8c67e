// Package main provides the seoaudit command line tool.
//
// Usage:
//
//	seoaudit audit https://example.com
//	seoaudit audit https://example.com --format markdown
//	seoaudit brief --topic "email marketing"
//	seoaudit keywords article.txt
//
// See --help for all available options.
package main

func main() {
	Execute()
}
