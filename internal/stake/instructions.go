package stake

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
)

// StakeConstants contains the stake program and sysvar addresses
type StakeConstants struct {
	ProgramID          solana.PublicKey
	SysvarRent         solana.PublicKey
	SysvarClock        solana.PublicKey
	SysvarStakeHistory solana.PublicKey
	Config             solana.PublicKey
}

// GetStakeConstants returns the stake program constants
func GetStakeConstants() StakeConstants {
	return StakeConstants{
		ProgramID:          solana.MustPublicKeyFromBase58("Stake11111111111111111111111111111111111111"),
		SysvarRent:         solana.MustPublicKeyFromBase58("SysvarRent111111111111111111111111111111111"),
		SysvarClock:        solana.MustPublicKeyFromBase58("SysvarC1ock11111111111111111111111111111111"),
		SysvarStakeHistory: solana.MustPublicKeyFromBase58("SysvarStakeHistory1111111111111111111111111"),
		Config:             solana.MustPublicKeyFromBase58("StakeConfig11111111111111111111111111111111"),
	}
}

// StakeAccountSize is the serialized size of a stake account.
const StakeAccountSize = 200

// Stake program instruction indices (u32 little-endian bincode enum)
const (
	initializeInstruction = 0
	delegateInstruction   = 2
	withdrawInstruction   = 4
	deactivateInstruction = 5
)

// Authorized names the keys allowed to manage a stake account.
type Authorized struct {
	Staker     solana.PublicKey
	Withdrawer solana.PublicKey
}

// Lockup restricts withdrawal until a timestamp or epoch passes. The zero
// value means no lockup.
type Lockup struct {
	UnixTimestamp int64
	Epoch         uint64
	Custodian     solana.PublicKey
}

// NewInitializeInstruction creates the stake Initialize instruction
func NewInitializeInstruction(stakeAccount solana.PublicKey, authorized Authorized, lockup Lockup) solana.Instruction {
	constants := GetStakeConstants()

	// Account order per the stake program:
	// 0: stake account (writable)
	// 1: rent sysvar (read-only)
	accounts := []*solana.AccountMeta{
		{PublicKey: stakeAccount, IsWritable: true, IsSigner: false},
		{PublicKey: constants.SysvarRent, IsWritable: false, IsSigner: false},
	}

	return solana.NewInstruction(
		constants.ProgramID,
		accounts,
		createInitializeInstructionData(authorized, lockup),
	)
}

// NewDelegateInstruction creates the DelegateStake instruction
func NewDelegateInstruction(stakeAccount, voteAccount, stakeAuthority solana.PublicKey) solana.Instruction {
	constants := GetStakeConstants()

	// Account order per the stake program:
	// 0: stake account (writable)
	// 1: vote account (read-only)
	// 2: clock sysvar (read-only)
	// 3: stake history sysvar (read-only)
	// 4: stake config (read-only)
	// 5: stake authority (signer)
	accounts := []*solana.AccountMeta{
		{PublicKey: stakeAccount, IsWritable: true, IsSigner: false},
		{PublicKey: voteAccount, IsWritable: false, IsSigner: false},
		{PublicKey: constants.SysvarClock, IsWritable: false, IsSigner: false},
		{PublicKey: constants.SysvarStakeHistory, IsWritable: false, IsSigner: false},
		{PublicKey: constants.Config, IsWritable: false, IsSigner: false},
		{PublicKey: stakeAuthority, IsWritable: false, IsSigner: true},
	}

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, delegateInstruction)

	return solana.NewInstruction(constants.ProgramID, accounts, data)
}

// NewDeactivateInstruction creates the Deactivate instruction
func NewDeactivateInstruction(stakeAccount, stakeAuthority solana.PublicKey) solana.Instruction {
	constants := GetStakeConstants()

	// Account order per the stake program:
	// 0: stake account (writable)
	// 1: clock sysvar (read-only)
	// 2: stake authority (signer)
	accounts := []*solana.AccountMeta{
		{PublicKey: stakeAccount, IsWritable: true, IsSigner: false},
		{PublicKey: constants.SysvarClock, IsWritable: false, IsSigner: false},
		{PublicKey: stakeAuthority, IsWritable: false, IsSigner: true},
	}

	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, deactivateInstruction)

	return solana.NewInstruction(constants.ProgramID, accounts, data)
}

// NewWithdrawInstruction creates the Withdraw instruction
func NewWithdrawInstruction(stakeAccount, recipient, withdrawAuthority solana.PublicKey, lamports uint64) solana.Instruction {
	constants := GetStakeConstants()

	// Account order per the stake program:
	// 0: stake account (writable)
	// 1: recipient (writable)
	// 2: clock sysvar (read-only)
	// 3: stake history sysvar (read-only)
	// 4: withdraw authority (signer)
	accounts := []*solana.AccountMeta{
		{PublicKey: stakeAccount, IsWritable: true, IsSigner: false},
		{PublicKey: recipient, IsWritable: true, IsSigner: false},
		{PublicKey: constants.SysvarClock, IsWritable: false, IsSigner: false},
		{PublicKey: constants.SysvarStakeHistory, IsWritable: false, IsSigner: false},
		{PublicKey: withdrawAuthority, IsWritable: false, IsSigner: true},
	}

	data := make([]byte, 12)
	binary.LittleEndian.PutUint32(data[0:4], withdrawInstruction)
	binary.LittleEndian.PutUint64(data[4:12], lamports)

	return solana.NewInstruction(constants.ProgramID, accounts, data)
}

// createInitializeInstructionData encodes the Initialize payload:
// enum (4) + authorized staker (32) + authorized withdrawer (32) +
// lockup timestamp (8) + lockup epoch (8) + lockup custodian (32)
func createInitializeInstructionData(authorized Authorized, lockup Lockup) []byte {
	data := make([]byte, 116)

	binary.LittleEndian.PutUint32(data[0:4], initializeInstruction)
	copy(data[4:36], authorized.Staker[:])
	copy(data[36:68], authorized.Withdrawer[:])
	binary.LittleEndian.PutUint64(data[68:76], uint64(lockup.UnixTimestamp))
	binary.LittleEndian.PutUint64(data[76:84], lockup.Epoch)
	copy(data[84:116], lockup.Custodian[:])

	return data
}
