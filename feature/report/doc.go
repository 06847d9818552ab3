// Package report renders reconciliation results.
//
// Three writers share the Writer interface:
//   - XLSXWriter: highlighted comparison workbook plus a summary sheet
//   - JSONWriter: metadata and the full result as JSON
//   - TextWriter: terminal summary with a preview of the differing keys
//
// Every writer renders, per record, the classification label, the old and new row
// snapshots and the changed columns. WriterFor picks a writer from an output file name.
package report
