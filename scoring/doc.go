/*
Package scoring turns raw contest votes into project scores and rankings.

It performs no I/O. Callers fetch votes from storage, hand them to an
Aggregator, and decide themselves whether to persist the result.

# Weighted Score

Votes are split into two voter classes, jury and public. Each class is
averaged on its own (an empty class averages to 0) and the final score is

	final = juryAverage*Weights.Jury + publicAverage*Weights.Public

The default weights are 0.7 and 0.3. Averages and the final score are kept
at full decimal precision; ScoreResult.Display rounds each of them to one
decimal for output, so recomputing never compounds rounding error.

# Ranking

RankProjects orders projects either by final score (ModeFinal) or by total
number of votes (ModePopular). Ties always fall back to ascending project
ID and ranks are 1-indexed.

# Validation

A vote with an unknown voter class, a non-finite value, or a value outside
the configured Scale makes the whole computation fail with a
*ValidationError. An empty vote list is not an error: it scores zero.
*/
package scoring
