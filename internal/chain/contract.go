// Package chain provides read/write access to the on-chain AL project contract.
package chain

import (
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

// Event names emitted by the project contract.
const (
	EventVotingSessionStarted = "VotingSessionStarted"
	EventVotingSessionEnded   = "VotingSessionEnded"
	EventALBatchCompleted     = "ALBatchCompleted"
	EventProjectEndTriggered  = "ProjectEndTriggered"
)

// projectABI is the hand-maintained interface of the deployed ALProject
// voting contract. Sample ids travel as plain strings, not indexed, so
// log payloads stay directly decodable.
const projectABI = `[
	{"type":"function","name":"currentRound","stateMutability":"view","inputs":[],"outputs":[{"name":"round","type":"uint256"}]},
	{"type":"function","name":"maxRounds","stateMutability":"view","inputs":[],"outputs":[{"name":"rounds","type":"uint256"}]},
	{"type":"function","name":"queryBatchSize","stateMutability":"view","inputs":[],"outputs":[{"name":"size","type":"uint256"}]},
	{"type":"function","name":"votingTimeout","stateMutability":"view","inputs":[],"outputs":[{"name":"seconds_","type":"uint256"}]},
	{"type":"function","name":"labelSpace","stateMutability":"view","inputs":[],"outputs":[{"name":"labels","type":"string[]"}]},
	{"type":"function","name":"currentBatchSampleIds","stateMutability":"view","inputs":[],"outputs":[{"name":"sampleIds","type":"string[]"}]},
	{"type":"function","name":"isSampleActive","stateMutability":"view","inputs":[{"name":"sampleId","type":"string"}],"outputs":[{"name":"active","type":"bool"}]},
	{"type":"function","name":"batchStatus","stateMutability":"view","inputs":[],"outputs":[{"name":"round","type":"uint256"},{"name":"totalSamples","type":"uint256"},{"name":"active","type":"bool"}]},
	{"type":"function","name":"shouldEnd","stateMutability":"view","inputs":[],"outputs":[{"name":"end","type":"bool"},{"name":"reason","type":"string"}]},
	{"type":"function","name":"votingHistory","stateMutability":"view","inputs":[{"name":"round","type":"uint256"}],"outputs":[{"name":"sampleIds","type":"string[]"},{"name":"labels","type":"string[]"},{"name":"timestamps","type":"uint256[]"}]},
	{"type":"function","name":"sampleVotes","stateMutability":"view","inputs":[{"name":"sampleId","type":"string"}],"outputs":[{"name":"voters","type":"address[]"},{"name":"labels","type":"string[]"}]},
	{"type":"function","name":"submitBatchVote","stateMutability":"nonpayable","inputs":[{"name":"sampleIds","type":"string[]"},{"name":"labels","type":"string[]"}],"outputs":[]},
	{"type":"function","name":"startNextRound","stateMutability":"nonpayable","inputs":[],"outputs":[]},
	{"type":"event","name":"VotingSessionStarted","anonymous":false,"inputs":[{"name":"sampleId","type":"string","indexed":false},{"name":"round","type":"uint256","indexed":false}]},
	{"type":"event","name":"VotingSessionEnded","anonymous":false,"inputs":[{"name":"sampleId","type":"string","indexed":false},{"name":"finalLabel","type":"string","indexed":false},{"name":"round","type":"uint256","indexed":false}]},
	{"type":"event","name":"ALBatchCompleted","anonymous":false,"inputs":[{"name":"round","type":"uint256","indexed":false},{"name":"completedCount","type":"uint256","indexed":false}]},
	{"type":"event","name":"ProjectEndTriggered","anonymous":false,"inputs":[{"name":"trigger","type":"string","indexed":false},{"name":"reason","type":"string","indexed":false},{"name":"round","type":"uint256","indexed":false}]}
]`

// ProjectABI returns the parsed contract ABI.
func ProjectABI() (abi.ABI, error) {
	return abi.JSON(strings.NewReader(projectABI))
}
