// Package source loads the model table from a CSV file, an XLSX workbook, or
// a Postgres table and hands it to core as a RawTable.
//
// Every Source reports a stable Key used by core.TableCache. File sources use
// the absolute path; the Postgres source uses "postgres:<table>".
package source
