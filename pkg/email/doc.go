// Package email sends transactional mail.
//
// Sender is the single outbound interface. Production wires the Postmark
// implementation; development uses DevSender, which drops each message into a
// local directory as an HTML file plus JSON metadata so it can be inspected
// in a browser.
//
// The marketplace uses it to tell applicants the outcome of mediator review.
package email
