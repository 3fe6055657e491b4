// Package lib holds modules that do not fit strictly into other layers.
//
// It contains password hashing (bcrypt) and the word catalog importer
// (spreadsheets and CSV files).
package lib
