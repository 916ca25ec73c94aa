// Package services implements the tweetwatch pipeline.
//
// Services sit between the driving ports (CLI) and the driven ports
// (Twitter API, sinks). They hold no global state: every dependency is
// passed in through a constructor.
//
//   - RuleReconciler: ensures the desired filter rule exists, adding it once
//   - Transform: converts one stream chunk into a tweet record
//   - Ingestor: drives the stream, appending each record to the sink in order
//   - Orchestrator: sequences the stages and reports the first fatal error
package services
