package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/human-rights-mis-api/databases"
	"github.com/linesmerrill/human-rights-mis-api/databases/mocks"
)

func TestEnsureSchema(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	colls := map[string]*mocks.CollectionHelper{}
	var unique []string
	for _, name := range []string{"cases", "incident_reports", "users", "victims", "case_status_history"} {
		name := name
		coll := &mocks.CollectionHelper{}
		coll.On("CreateIndex", mock.Anything, mock.AnythingOfType("mongo.IndexModel")).
			Run(func(args mock.Arguments) {
				m := args.Get(1).(mongo.IndexModel)
				if m.Options != nil && m.Options.Unique != nil && *m.Options.Unique {
					unique = append(unique, name)
				}
			}).Return("idx", nil)
		db.On("Collection", name).Return(coll)
		colls[name] = coll
	}
	db.On("CreateView", mock.Anything, "report_evidence", "incident_reports", mock.Anything).Return(nil)

	require.NoError(t, databases.EnsureSchema(context.Background(), db))

	assert.ElementsMatch(t, []string{"cases", "incident_reports", "users", "victims"}, unique)
	colls["case_status_history"].AssertNumberOfCalls(t, "CreateIndex", 1)
	db.AssertCalled(t, "CreateView", mock.Anything, "report_evidence", "incident_reports", mock.Anything)
}

func TestEnsureSchema_IndexFailure(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	coll := &mocks.CollectionHelper{}
	coll.On("CreateIndex", mock.Anything, mock.Anything).Return("", errors.New("mocked-error"))
	db.On("Collection", mock.Anything).Return(coll)

	err := databases.EnsureSchema(context.Background(), db)

	assert.ErrorContains(t, err, "mocked-error")
	db.AssertNotCalled(t, "CreateView", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewTransactor_SequentialWhenDisabled(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	var order []string

	err := databases.NewTransactor(db, false).WithTransaction(context.Background(), func(ctx context.Context) error {
		order = append(order, "unlink", "delete")
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"unlink", "delete"}, order)
	db.AssertNotCalled(t, "Client")
}

func TestNewTransactor_SessionError(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	client := &mocks.ClientHelper{}
	client.On("StartSession").Return(nil, errors.New("mocked-error"))
	db.On("Client").Return(client)

	called := false
	err := databases.NewTransactor(db, true).WithTransaction(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	assert.EqualError(t, err, "mocked-error")
	assert.False(t, called)
}

type fakeSession struct {
	mongo.Session
	started, committed, aborted, ended int
	commitErr                          error
}

func (s *fakeSession) StartTransaction(...*options.TransactionOptions) error {
	s.started++
	return nil
}

func (s *fakeSession) CommitTransaction(context.Context) error {
	s.committed++
	return s.commitErr
}

func (s *fakeSession) AbortTransaction(context.Context) error {
	s.aborted++
	return nil
}

func (s *fakeSession) EndSession(context.Context) {
	s.ended++
}

func transactorWith(sess *fakeSession) databases.Transactor {
	db := &mocks.DatabaseHelper{}
	client := &mocks.ClientHelper{}
	client.On("StartSession").Return(sess, nil)
	db.On("Client").Return(client)
	return databases.NewTransactor(db, true)
}

func TestNewTransactor_Commits(t *testing.T) {
	sess := &fakeSession{}
	var inSession mongo.Session

	err := transactorWith(sess).WithTransaction(context.Background(), func(ctx context.Context) error {
		inSession = mongo.SessionFromContext(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.Same(t, sess, inSession)
	assert.Equal(t, 1, sess.started)
	assert.Equal(t, 1, sess.committed)
	assert.Equal(t, 0, sess.aborted)
	assert.Equal(t, 1, sess.ended)
}

func TestNewTransactor_AbortsOnError(t *testing.T) {
	sess := &fakeSession{}
	calls := 0

	err := transactorWith(sess).WithTransaction(context.Background(), func(ctx context.Context) error {
		calls++
		return errors.New("mocked-error")
	})

	assert.EqualError(t, err, "mocked-error")
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, sess.aborted)
	assert.Equal(t, 0, sess.committed)
	assert.Equal(t, 1, sess.ended)
}

func TestNewTransactor_CommitErrorIsNotRetried(t *testing.T) {
	commitErr := mongo.CommandError{Code: 112, Message: "WriteConflict", Labels: []string{"TransientTransactionError"}}
	sess := &fakeSession{commitErr: commitErr}
	calls := 0

	err := transactorWith(sess).WithTransaction(context.Background(), func(ctx context.Context) error {
		calls++
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, sess.committed)
}
