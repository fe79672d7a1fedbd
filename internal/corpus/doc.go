// Package corpus assembles header documents and combined records into the
// single teiCorpus training file and writes it to disk.
package corpus
