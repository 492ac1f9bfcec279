package ping

// quorumVote は試行結果を数え、定足数に達したか（または達し得ないか）を判定する
type quorumVote struct {
	attempts  int
	threshold int
	successes int
	failures  int
}

func newQuorumVote(attempts, threshold int) *quorumVote {
	return &quorumVote{attempts: attempts, threshold: threshold}
}

// record は1回分の試行結果を記録する
func (v *quorumVote) record(ok bool) {
	if ok {
		v.successes++
	} else {
		v.failures++
	}
}

// reached は成功数が閾値に達したかを返す
func (v *quorumVote) reached() bool {
	return v.successes >= v.threshold
}

// decided は結果が数学的に確定したかを返す
func (v *quorumVote) decided() bool {
	if v.reached() {
		return true
	}
	// 残り全てが成功しても閾値に届かない
	return v.failures > v.attempts-v.threshold
}
