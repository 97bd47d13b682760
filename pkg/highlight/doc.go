// Package highlight turns source code into colored code-box lines.
//
// Code is tokenized by chroma and formatted as HTML with inline styles.
// The HTML is then walked with goquery: every text node takes the color,
// weight, and slant of its nearest styled ancestor span, and the text is
// split into lines. Each line becomes one paragraph with one run per token.
//
// Token colors that are too dark (or too light) to read against the code
// box fill are replaced by the style's base text color, or the configured
// fallback when the style has none.
package highlight
