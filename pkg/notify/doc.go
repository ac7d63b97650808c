// Package notify renders personalized push notifications for committed
// decisions. Each catalog product has a text template filled with the
// client's name, formatted amounts, and top spend categories, then
// post-processed to fit the configured length band: short texts are
// padded with a neutral closing, long texts are cut at a sentence
// boundary, shouting is normalized, and repeated exclamation marks are
// collapsed.
package notify
