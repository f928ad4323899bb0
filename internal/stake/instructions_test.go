package stake

import (
	"encoding/binary"
	"testing"

	"github.com/gagliardetto/solana-go"
)

func TestInitializeInstructionEncoding(t *testing.T) {
	stakeAccount := solana.NewWallet().PublicKey()
	staker := solana.NewWallet().PublicKey()
	withdrawer := solana.NewWallet().PublicKey()
	custodian := solana.NewWallet().PublicKey()

	ix := NewInitializeInstruction(stakeAccount, Authorized{
		Staker:     staker,
		Withdrawer: withdrawer,
	}, Lockup{
		UnixTimestamp: 1234,
		Epoch:         7,
		Custodian:     custodian,
	})

	if ix.ProgramID() != GetStakeConstants().ProgramID {
		t.Errorf("program id = %s", ix.ProgramID())
	}

	accounts := ix.Accounts()
	if len(accounts) != 2 {
		t.Fatalf("initialize has %d accounts, want 2", len(accounts))
	}
	if accounts[0].PublicKey != stakeAccount || !accounts[0].IsWritable || accounts[0].IsSigner {
		t.Errorf("account 0 = %+v, want writable non-signer stake account", accounts[0])
	}
	if accounts[1].PublicKey != GetStakeConstants().SysvarRent {
		t.Errorf("account 1 = %s, want rent sysvar", accounts[1].PublicKey)
	}

	data, err := ix.Data()
	if err != nil {
		t.Fatalf("Data() error: %v", err)
	}
	if len(data) != 116 {
		t.Fatalf("initialize data is %d bytes, want 116", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[0:4]); got != initializeInstruction {
		t.Errorf("instruction index = %d, want %d", got, initializeInstruction)
	}
	if !staker.Equals(solana.PublicKeyFromBytes(data[4:36])) {
		t.Errorf("staker not at offset 4")
	}
	if !withdrawer.Equals(solana.PublicKeyFromBytes(data[36:68])) {
		t.Errorf("withdrawer not at offset 36")
	}
	if got := binary.LittleEndian.Uint64(data[68:76]); got != 1234 {
		t.Errorf("lockup timestamp = %d, want 1234", got)
	}
	if got := binary.LittleEndian.Uint64(data[76:84]); got != 7 {
		t.Errorf("lockup epoch = %d, want 7", got)
	}
	if !custodian.Equals(solana.PublicKeyFromBytes(data[84:116])) {
		t.Errorf("custodian not at offset 84")
	}
}

func TestDelegateInstructionEncoding(t *testing.T) {
	stakeAccount := solana.NewWallet().PublicKey()
	voteAccount := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	ix := NewDelegateInstruction(stakeAccount, voteAccount, authority)

	accounts := ix.Accounts()
	if len(accounts) != 6 {
		t.Fatalf("delegate has %d accounts, want 6", len(accounts))
	}
	if accounts[1].PublicKey != voteAccount {
		t.Errorf("account 1 = %s, want vote account", accounts[1].PublicKey)
	}
	if accounts[5].PublicKey != authority || !accounts[5].IsSigner {
		t.Errorf("account 5 = %+v, want authority signer", accounts[5])
	}

	data, _ := ix.Data()
	if len(data) != 4 {
		t.Fatalf("delegate data is %d bytes, want 4", len(data))
	}
	if got := binary.LittleEndian.Uint32(data); got != delegateInstruction {
		t.Errorf("instruction index = %d, want %d", got, delegateInstruction)
	}
}

func TestDeactivateInstructionEncoding(t *testing.T) {
	stakeAccount := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	ix := NewDeactivateInstruction(stakeAccount, authority)

	accounts := ix.Accounts()
	if len(accounts) != 3 {
		t.Fatalf("deactivate has %d accounts, want 3", len(accounts))
	}
	if accounts[2].PublicKey != authority || !accounts[2].IsSigner {
		t.Errorf("account 2 = %+v, want authority signer", accounts[2])
	}

	data, _ := ix.Data()
	if got := binary.LittleEndian.Uint32(data); got != deactivateInstruction {
		t.Errorf("instruction index = %d, want %d", got, deactivateInstruction)
	}
}

func TestWithdrawInstructionEncoding(t *testing.T) {
	stakeAccount := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()
	authority := solana.NewWallet().PublicKey()

	ix := NewWithdrawInstruction(stakeAccount, recipient, authority, 5_000_000)

	accounts := ix.Accounts()
	if len(accounts) != 5 {
		t.Fatalf("withdraw has %d accounts, want 5", len(accounts))
	}
	if accounts[1].PublicKey != recipient || !accounts[1].IsWritable {
		t.Errorf("account 1 = %+v, want writable recipient", accounts[1])
	}

	data, _ := ix.Data()
	if len(data) != 12 {
		t.Fatalf("withdraw data is %d bytes, want 12", len(data))
	}
	if got := binary.LittleEndian.Uint32(data[0:4]); got != withdrawInstruction {
		t.Errorf("instruction index = %d, want %d", got, withdrawInstruction)
	}
	if got := binary.LittleEndian.Uint64(data[4:12]); got != 5_000_000 {
		t.Errorf("lamports = %d, want 5000000", got)
	}
}

func TestZeroLockupEncodesZeroes(t *testing.T) {
	ix := NewInitializeInstruction(solana.NewWallet().PublicKey(), Authorized{}, Lockup{})
	data, _ := ix.Data()
	for i, b := range data[68:116] {
		if b != 0 {
			t.Fatalf("zero lockup has non-zero byte at offset %d", 68+i)
		}
	}
}
