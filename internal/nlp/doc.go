// Package nlp translates free-form requests into canonical commands.
//
// A request flows through a fixed pipeline:
//
//   - Split breaks it on the highest-priority connector phrase.
//   - Classify runs each step through an ordered keyword waterfall and falls
//     back to Jaccard similarity over synonym-normalized words.
//   - Extract picks the entity (file, directory or path) the step acts on.
//   - Synthesize renders the result as a canonical command such as
//     "touch report.txt" or "ls -la".
//
// Everything here is pure: the vocabulary tables are fixed at start-up and
// no function touches the filesystem.
package nlp
