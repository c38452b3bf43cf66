package asmgen

// runtimeAsm is the fixed runtime support library appended to every
// generated program, providing the handful of builtin calls the
// language's `New`, `NewArray`, `Print`, `ReadInteger`, `ReadLine`, and
// string-equality operators lower to. It targets a MIPS/SPIM-style
// syscall convention, the same target the teacher's own vm_translator
// output ultimately assembles down to a real machine's instruction
// set for.
const runtimeAsm = `
.text
_Alloc:
  lw $a0, 4($sp)
  li $v0, 9
  syscall
  jr $ra

_PrintInt:
  lw $a0, 4($sp)
  li $v0, 1
  syscall
  jr $ra

_PrintString:
  lw $a0, 4($sp)
  li $v0, 4
  syscall
  jr $ra

_PrintBool:
  lw $a0, 4($sp)
  beqz $a0, _PrintBool_false
  la $a0, _true_str
  li $v0, 4
  syscall
  jr $ra
_PrintBool_false:
  la $a0, _false_str
  li $v0, 4
  syscall
  jr $ra

_ReadInteger:
  li $v0, 5
  syscall
  jr $ra

_ReadLine:
  la $a0, _readline_buf
  li $a1, 1024
  li $v0, 8
  syscall
  la $v0, _readline_buf
  jr $ra

_StringEqual:
  lw $t0, 4($sp)
  lw $t1, 8($sp)
_StringEqual_loop:
  lb $t2, 0($t0)
  lb $t3, 0($t1)
  bne $t2, $t3, _StringEqual_false
  beqz $t2, _StringEqual_true
  addiu $t0, $t0, 1
  addiu $t1, $t1, 1
  j _StringEqual_loop
_StringEqual_true:
  li $v0, 1
  jr $ra
_StringEqual_false:
  li $v0, 0
  jr $ra

_Halt:
  li $v0, 10
  syscall

.data
_true_str: .asciiz "true"
_false_str: .asciiz "false"
_readline_buf: .space 1024
`
