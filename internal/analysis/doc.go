// Package analysis summarizes recorded metric series: basic statistics, the
// dominant oscillation frequency of the cloth, and when it settles.
package analysis
