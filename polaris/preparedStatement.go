package polaris

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"sync"
	"time"
)

// PreparedStatement represents a SQL statement with bind variables that can be
// executed multiple times with different parameter values. Substitution
// happens on the client: the Polaris query API has no parameter support of
// its own.
type PreparedStatement interface {
	// SetString sets the parameter at the given index to the given string value
	SetString(parameterIndex int, value string) error

	// SetInt sets the parameter at the given index to the given int value
	SetInt(parameterIndex int, value int) error

	// SetInt64 sets the parameter at the given index to the given int64 value
	SetInt64(parameterIndex int, value int64) error

	// SetFloat64 sets the parameter at the given index to the given float64 value
	SetFloat64(parameterIndex int, value float64) error

	// SetBool sets the parameter at the given index to the given bool value
	SetBool(parameterIndex int, value bool) error

	// Set sets the parameter at the given index to the given value (any supported type)
	Set(parameterIndex int, value interface{}) error

	// Execute executes the prepared statement with the currently set parameters
	Execute() (*SQLResult, error)

	// ExecuteWithParams sets all parameters and executes in one call
	ExecuteWithParams(params ...interface{}) (*SQLResult, error)

	// GetQuery returns the original query template
	GetQuery() string

	// GetParameterCount returns the number of parameters in the prepared statement
	GetParameterCount() int

	// ClearParameters clears all currently set parameters
	ClearParameters() error

	// Close closes the prepared statement and releases any associated resources
	Close() error
}

type preparedStatement struct {
	client        *Client
	queryTemplate string
	queryParts    []string // Query split by '?' placeholders
	paramCount    int
	parameters    []interface{}
	mutex         sync.RWMutex
	closed        bool
}

// Prepare creates a new PreparedStatement for the given query template. The
// template uses '?' as placeholders for parameters.
// Example: "SELECT * FROM logs WHERE level = ? AND host = ?"
func (c *Client) Prepare(queryTemplate string) (PreparedStatement, error) {
	if queryTemplate == "" {
		return nil, fmt.Errorf("query template cannot be empty")
	}
	parts := strings.Split(queryTemplate, "?")
	paramCount := len(parts) - 1
	if paramCount == 0 {
		return nil, fmt.Errorf("query template must contain at least one parameter placeholder (?)")
	}
	return &preparedStatement{
		client:        c,
		queryTemplate: queryTemplate,
		queryParts:    parts,
		paramCount:    paramCount,
		parameters:    make([]interface{}, paramCount),
	}, nil
}

func (ps *preparedStatement) SetString(parameterIndex int, value string) error {
	return ps.Set(parameterIndex, value)
}

func (ps *preparedStatement) SetInt(parameterIndex int, value int) error {
	return ps.Set(parameterIndex, value)
}

func (ps *preparedStatement) SetInt64(parameterIndex int, value int64) error {
	return ps.Set(parameterIndex, value)
}

func (ps *preparedStatement) SetFloat64(parameterIndex int, value float64) error {
	return ps.Set(parameterIndex, value)
}

func (ps *preparedStatement) SetBool(parameterIndex int, value bool) error {
	return ps.Set(parameterIndex, value)
}

func (ps *preparedStatement) Set(parameterIndex int, value interface{}) error {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	if ps.closed {
		return fmt.Errorf("prepared statement is closed")
	}
	if parameterIndex < 1 || parameterIndex > ps.paramCount {
		return fmt.Errorf("parameter index %d is out of range [1, %d]", parameterIndex, ps.paramCount)
	}
	ps.parameters[parameterIndex-1] = value
	return nil
}

func (ps *preparedStatement) Execute() (*SQLResult, error) {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()
	if ps.closed {
		return nil, fmt.Errorf("prepared statement is closed")
	}
	for i, param := range ps.parameters {
		if param == nil {
			return nil, fmt.Errorf("parameter at index %d is not set", i+1)
		}
	}
	query, err := ps.buildQuery(ps.parameters)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %v", err)
	}
	return ps.client.ExecuteSQL(query)
}

func (ps *preparedStatement) ExecuteWithParams(params ...interface{}) (*SQLResult, error) {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	if ps.closed {
		return nil, fmt.Errorf("prepared statement is closed")
	}
	query, err := ps.buildQuery(params)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %v", err)
	}
	return ps.client.ExecuteSQL(query)
}

func (ps *preparedStatement) GetQuery() string {
	return ps.queryTemplate
}

func (ps *preparedStatement) GetParameterCount() int {
	return ps.paramCount
}

func (ps *preparedStatement) ClearParameters() error {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	if ps.closed {
		return fmt.Errorf("prepared statement is closed")
	}
	for i := range ps.parameters {
		ps.parameters[i] = nil
	}
	return nil
}

func (ps *preparedStatement) Close() error {
	ps.mutex.Lock()
	defer ps.mutex.Unlock()
	ps.closed = true
	ps.parameters = nil
	return nil
}

// buildQuery builds the final SQL query by substituting parameters
func (ps *preparedStatement) buildQuery(params []interface{}) (string, error) {
	if len(params) != ps.paramCount {
		return "", fmt.Errorf("expected %d parameters, got %d", ps.paramCount, len(params))
	}
	var query strings.Builder
	for i, part := range ps.queryParts[:len(ps.queryParts)-1] {
		query.WriteString(part)
		formattedParam, err := formatArg(params[i])
		if err != nil {
			return "", fmt.Errorf("failed to format parameter at index %d: %v", i+1, err)
		}
		query.WriteString(formattedParam)
	}
	// Add the last part of the query, which does not follow a '?'
	query.WriteString(ps.queryParts[len(ps.queryParts)-1])
	return query.String(), nil
}

// formatQuery substitutes the values into the '?' placeholders of the query
// pattern.
func formatQuery(queryPattern string, params []interface{}) (string, error) {
	parts := strings.Split(queryPattern, "?")
	if len(parts)-1 != len(params) {
		return "", fmt.Errorf("expected %d parameters, got %d", len(parts)-1, len(params))
	}
	var query strings.Builder
	for i, part := range parts[:len(parts)-1] {
		query.WriteString(part)
		formattedParam, err := formatArg(params[i])
		if err != nil {
			return "", err
		}
		query.WriteString(formattedParam)
	}
	query.WriteString(parts[len(parts)-1])
	return query.String(), nil
}

// formatArg renders one bind value as a SQL literal. Strings are quoted with
// single quotes doubled, timestamps use the Druid literal format, byte slices
// become hex strings.
func formatArg(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'", nil
	case time.Time:
		return "'" + v.UTC().Format("2006-01-02 15:04:05.000") + "'", nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case json.Number:
		return v.String(), nil
	case *big.Int:
		return "'" + v.String() + "'", nil
	case *big.Float:
		return "'" + v.Text('f', -1) + "'", nil
	case []byte:
		return "'" + hex.EncodeToString(v) + "'", nil
	default:
		return "", fmt.Errorf("unsupported type: %T", value)
	}
}
