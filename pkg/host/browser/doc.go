// Package browser implements host capabilities on a Chromium browser driven
// through Playwright.
//
// Every open page is a tab with a stable integer id. Injecting the content
// script installs a small in-page object that exposes the rendered text; the
// matching extractor listener lives on the Go side and reads the text through
// that object. A page that navigates loses the object, and the next message
// to the tab reports that no receiver exists, so callers re-inject.
//
// Two modes are supported:
//   - Launch: start a fresh Chromium, optionally headless, with a start URL.
//   - Attach: connect to a running Chromium over the DevTools protocol and
//     use the tabs the user already has open.
package browser
